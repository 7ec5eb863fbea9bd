package constants

var (
	VERSION = "dev"
)
