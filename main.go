// Public domain.

package main

import "github.com/soniakeys/psrcat/internal/psrprog"

func main() {
	psrprog.Main()
}
