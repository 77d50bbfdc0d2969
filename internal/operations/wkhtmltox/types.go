package wkhtmltox

// Release pins the package build published for one Ubuntu release codename.
type Release struct {
	Tag            string // GitHub release tag the deb is published under
	PackageVersion string // version string embedded in the deb filename
}

// Artifact is a fully resolved download target for this host.
type Artifact struct {
	URL      string
	Codename string
	Arch     string
	Release  Release
}

// Constants
const (
	BinaryName      = "wkhtmltopdf"
	DefaultBaseURL  = "https://github.com/wkhtmltopdf/packaging/releases/download"
	DownloadTimeout = 300 // 5 minutes
)

// releases is the exhaustive codename map. A codename missing here is a
// hard error, never a silent default.
var releases = map[string]Release{
	"jammy":  {Tag: "0.12.6.1-2", PackageVersion: "0.12.6.1-2"},
	"focal":  {Tag: "0.12.6.1-2", PackageVersion: "0.12.6.1-2"},
	"bionic": {Tag: "0.12.6-1", PackageVersion: "0.12.6-1"},
	"xenial": {Tag: "0.12.6-1", PackageVersion: "0.12.6-1"},
}
