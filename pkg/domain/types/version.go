package types

// Version is overwritten at build time with -ldflags.
var Version = "dev"
