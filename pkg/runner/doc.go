// Package runner is the only place rigup starts external programs.
//
// Installers and system steps describe work as a Command and hand it to a
// Runner. The Exec runner executes it, appending all output to the install
// log; the DryRun runner only logs; runnertest.Fake records invocations for
// tests. Callers depend on the exit status alone, plus captured stdout for
// query commands such as listing installed packages.
package runner
