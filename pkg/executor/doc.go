// Package executor runs the check-then-install cycle of a single recipe.
//
// A run starts in StateChecking. When every check command succeeds the
// recipe is StateSatisfied and nothing is installed. Otherwise it moves to
// StateInstalling and ends in StateDone or StateFailed. Check is not run
// again after installing.
package executor
