// Copyright © 2016 Zellyn Hunter <zellyn@gmail.com>

package main

import (
	"github.com/zellyn/derethfs/cmd"
)

func main() {
	cmd.Execute()
}
