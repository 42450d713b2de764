// Package main is the entry point of vjlooper.
package main

import (
	"github.com/mbeissinger/vj-looper/cmd"
	"github.com/mbeissinger/vj-looper/config"
	"github.com/mbeissinger/vj-looper/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
