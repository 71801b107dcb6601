package version

import "fmt"

// Set with -ldflags "-X contentful-blog/pkg/version.version=..."
var (
	commitID string
	version  = "dev"
)

func GetVersion() string {
	return version
}

func GetBuildInfo() string {
	return fmt.Sprintf("CommitID: %s\nVersion: %s\n", commitID, version)
}
