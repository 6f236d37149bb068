// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the sdml command line interface.
//
// Every command is built around an App, which holds the configuration
// provider and the process streams. Tests construct an App with Dependencies
// pointing at buffers and run the command tree returned by NewRootCommand.
package cmd
