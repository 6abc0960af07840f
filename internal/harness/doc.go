// Package harness provides declarative scenario testing over the lockstep
// engine.
//
// The harness loads scenario files, builds the declared step chain from a
// registry of step builders, executes it, and validates the resulting trace
// against per-step expectations.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	initial:
//	  a: 10
//	  b: 40
//	steps:
//	  - op: add_two_numbers
//	  - op: result_is
//	    args: { value: 50 }
//	  - op: add
//	    args: { value: 10 }
//	expect:
//	  - status: success
//	    data: { result: 50 }
//	  - status: success
//	  - status: success
//	    data: { result: 60 }
//
// # Step Builders
//
// Each step names a builder registered under its op. Builders are registered
// explicitly by the caller (there is no discovery mechanism); the default
// registry ships arithmetic and utility builders:
//
//   - add_two_numbers: sums initial keys "a" and "b" into "result"
//   - add, subtract: adjust "result" by args.value
//   - result_is: fails unless "result" equals args.value
//   - set: stores args.value under args.key
//   - fail: declares a failure with args.msg
//   - panic: panics with args.msg (exercises the engine's fault barrier)
//
// # Deterministic Testing
//
// A scenario may pin run_token so repeated runs produce byte-identical trace
// snapshots for golden file comparison; without one, each run gets a fresh
// UUID token. Golden comparison lives in RunWithGolden.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/checkout.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
