package version

import "runtime/debug"

// AppName is reported to AWS as the user-agent application ID so Bedrock
// traffic from this tool can be told apart in CloudTrail.
const AppName = "novaguard"

var Revision string

func init() {
	if build, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range build.Settings {
			if setting.Key == "vcs.revision" {
				Revision = setting.Value
				return
			}
		}
	}

	Revision = "<unknown>"
}
