// Package system performs the one-shot machine configuration around the
// package pipeline: the target account, sudo policy, pacman and makepkg
// settings, small hardware tweaks and the dotfiles deployment.
//
// Files are edited through an afero.Fs and programs run through a
// runner.Runner, so every step can be exercised against an in-memory
// filesystem and a scripted runner.
package system
