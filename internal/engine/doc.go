// Package engine runs the discrete-time reliability simulation.
//
// Each Iterate call runs the orchestrator when its period has elapsed
// (always on the first step), decides which active containers fail during
// the step, charges spot-priced running cost per processed container,
// charges the cost of failure when the task has certainly failed, records
// telemetry and advances the clock.
//
// Two failure modes exist and they are not equivalent:
//   - scheduled: each container fails once its pre-sampled local failure
//     instant falls inside the step; the recorded time is that instant
//   - bernoulli: each step draws a fresh conditional failure outcome; the
//     recorded time is the container's local time at the step
package engine
