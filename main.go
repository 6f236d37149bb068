// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/sdml-io/sdml/cmd/sdml"

func main() {
	cmd.Execute()
}
