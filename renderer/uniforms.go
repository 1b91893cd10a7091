package renderer

// Uniform names declared by shaders/body.vs and shaders/body.fs.
const (
	UniformModel      = "matModel"
	UniformView       = "matView"
	UniformProjection = "matProjection"
	UniformBaseColor  = "baseColor"
	UniformViewPos    = "viewPos"
	UniformTime       = "time"

	UniformOccluders      = "occluders"
	UniformOccluderCount  = "occluderCount"
	UniformParentOccluder = "parentOccluder"

	UniformAmbient             = "ambient"
	UniformUmbraLevel          = "umbraLevel"
	UniformPenumbraScale       = "penumbraScale"
	UniformTerminatorThreshold = "terminatorThreshold"
	UniformTerminatorBand      = "terminatorBand"
	UniformNightLevel          = "nightLevel"
	UniformNightBlendRange     = "nightBlendRange"
	UniformShininess           = "shininess"
	UniformSpecularStrength    = "specularStrength"
	UniformCloudSpeed          = "cloudSpeed"

	UniformSunspotScale     = "sunspotScale"
	UniformSunspotDrift     = "sunspotDrift"
	UniformSunspotThreshold = "sunspotThreshold"
	UniformSunspotDarkness  = "sunspotDarkness"
)

// MaxOccluders is the size of the occluders array in body.fs.
const MaxOccluders = 4

// Texture units used by the body program.
const (
	UnitDay = iota
	UnitNight
	UnitClouds
	UnitSpecular
	UnitNormal
	NumTextureUnits
)

var samplerNames = [NumTextureUnits]string{
	UnitDay:      "texture0",
	UnitNight:    "nightMap",
	UnitClouds:   "cloudMap",
	UnitSpecular: "specularMap",
	UnitNormal:   "normalMap",
}

// Toggle is a boolean uniform whose last written value is cached.
type Toggle int

const (
	ToggleEmissive Toggle = iota
	ToggleUseTexture
	ToggleUseClouds
	ToggleUseSpecular
	ToggleUseNormal
	ToggleUseNight
	ToggleUseTerminator
	ToggleCheckShadow
	ToggleCheckPlanetShadow
	NumToggles
)

var toggleNames = [NumToggles]string{
	ToggleEmissive:          "emissive",
	ToggleUseTexture:        "useTexture",
	ToggleUseClouds:         "useClouds",
	ToggleUseSpecular:       "useSpecular",
	ToggleUseNormal:         "useNormal",
	ToggleUseNight:          "useNight",
	ToggleUseTerminator:     "useTerminator",
	ToggleCheckShadow:       "checkShadow",
	ToggleCheckPlanetShadow: "checkPlanetShadow",
}

func (t Toggle) String() string {
	if t < 0 || t >= NumToggles {
		return "unknown"
	}
	return toggleNames[t]
}
