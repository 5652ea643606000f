// The runcond command inspects verdict recordings produced by
// condition-gated schedulers.
package main

func main() {
	Execute()
}
