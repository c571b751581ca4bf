package main

import "fmt"

// version is set at link time via -ldflags, e.g.
// -X main.version=v1.2.3. It defaults to "dev" for local builds.
var version = "dev"

// VersionCmd prints the build version.
type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	fmt.Println("nesvm", version)
	return nil
}
