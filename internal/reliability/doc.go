// Package reliability models the failure behaviour of a task served by
// redundant microservices.
//
// A Cloud is a series composition of Microservices: the task fails if any
// microservice fails. A Microservice is a parallel composition of Containers:
// it fails only if all of its containers fail. Each Container carries a
// FailureModel (a CDF over container-local time plus a sampler) and answers
// the conditional question "given I survived until t, how likely am I to fail
// within [t, t+delta]?".
//
// Main Types:
//   - FailureModel: pluggable failure-time distribution (exponential, Weibull, log-normal or custom functions)
//   - Container: one instance with a start time, a pre-sampled failure instant and an active/failed state
//   - Microservice: named, costed group of redundant containers sharing one FailureModel
//   - Cloud: ordered set of microservices, with deep Clone and Snapshot for counterfactual evaluation
//
// Usage:
//
//	rng := utils.NewRandSource(42)
//	model, _ := reliability.NewExponential(1)
//	ms, err := reliability.NewMicroservice("api", 0.03, 1, 0, model, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cloud := reliability.NewCloud(ms)
//	p := cloud.ProbabilityOfFailure(0, 0.01)
package reliability
