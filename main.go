// SPDX-License-Identifier: MPL-2.0

package main

import cmd "routegen-cli/cmd/routegen"

func main() {
	cmd.Execute()
}
