// SPDX-License-Identifier: MPL-2.0

package main

import cmd "runway-cli/cmd/runway"

func main() {
	cmd.Execute()
}
