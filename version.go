package main

// Stamped with -ldflags "-X main.gitSHA1=... -X main.gitDirty=...".
var (
	gitSHA1  string = "unknown"
	gitDirty string = "unknown"
)
