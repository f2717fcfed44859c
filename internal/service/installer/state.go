package installer

// InstallState accumulates the env vars the steps collect. Keys match
// what the config package reads at startup.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}
