// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"hlbsp/commandline"
)

func main() {
	commandline.Execute()
}
