package pos

// baseURLs maps (provider, environment) to the vendor's REST endpoint.
// Pure data; never mutated after init.
var baseURLs = map[Provider]map[Environment]string{
	ProviderSquare: {
		EnvSandbox:    "https://connect.squareupsandbox.com",
		EnvProduction: "https://connect.squareup.com",
	},
	ProviderToast: {
		EnvSandbox:    "https://ws-sandbox-api.toasttab.com",
		EnvProduction: "https://ws-api.toasttab.com",
	},
	ProviderClover: {
		EnvSandbox:    "https://sandbox.dev.clover.com",
		EnvProduction: "https://api.clover.com",
	},
	ProviderLightspeed: {
		EnvSandbox:    "https://api.lightspeedhq.com",
		EnvProduction: "https://api.lightspeedhq.com",
	},
}

// BaseURL resolves the REST base URL for a provider/environment pair.
// An unknown pair yields "" rather than an error; the connector's first
// call then fails against the malformed endpoint. Construction never
// rejects a configuration.
func BaseURL(provider Provider, environment Environment) string {
	envs, ok := baseURLs[provider]
	if !ok {
		return ""
	}
	return envs[environment]
}
