// Package deps installs a recipe's dependencies before the recipe itself.
//
// Each dependency reference is handed to an Invoker, one at a time and in
// declared order. The production Invoker, SelfInvoker, runs the deptool
// executable again with the parent's root flag, so every dependency goes
// through its own complete check, deps, download and install cycle. The
// first failing dependency stops the run.
package deps
