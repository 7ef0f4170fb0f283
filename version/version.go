package version

// Version is the Major.Minor.Patch tag of the build, set with
//   -ldflags "-X github.com/jake-scott/switchbot-cli/version.Version=..."
// and 'dev' otherwise
var Version string = "dev"
