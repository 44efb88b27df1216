// Package installer implements the four ways rigup installs a program.
//
// Every installer follows the same template: an idempotency check that may
// skip the work, then the install action. All subprocess output goes to the
// install log through the runner, never to the terminal.
//
//   - Official: the system package manager. Idempotency is delegated to the
//     manager (--needed turns an installed package into a no-op).
//   - AUR: the secondary helper, run as the target user. Skips packages in
//     the session's installed snapshot without running anything.
//   - Git: shallow clone into the scratch directory (or force-pull an
//     existing checkout), then build and install with make.
//   - Pip: makes sure pip itself exists, then always installs the package.
//
// Set maps a manifest.Tag to its installer.
package installer
