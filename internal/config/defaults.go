package config

import "runtime"

const (
	defaultOriginalsDir    = "originals"
	defaultThresholdMode   = ThresholdFraction
	defaultThreshold       = 0.6
	defaultTemplateMaxSide = 160
	defaultMaxFeatures     = 1000
	defaultFastThreshold   = 20
	defaultGoodDistance    = 60
	defaultSaturationCount = 25
	defaultKeypointMaxSide = 640
	defaultCacheImages     = 64
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Threshold modes accepted by matching.threshold_mode.
const (
	ThresholdFraction = "fraction"
	ThresholdAbsolute = "absolute"
)

// Rule names accepted by matching.rules.
const (
	RuleMetadata  = "metadata"
	RuleHistogram = "histogram"
	RuleTemplate  = "template"
	RuleKeypoint  = "keypoint"
)

var (
	defaultExtensions = []string{".jpg", ".jpeg", ".png"}
	defaultRules      = []string{RuleMetadata, RuleHistogram, RuleTemplate, RuleKeypoint}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OriginalsDir: defaultOriginalsDir,
		},
		Registration: Registration{
			Extensions: append([]string(nil), defaultExtensions...),
		},
		Matching: Matching{
			Rules:         append([]string(nil), defaultRules...),
			ThresholdMode: defaultThresholdMode,
			Threshold:     defaultThreshold,
			Workers:       runtime.NumCPU(),
		},
		Template: Template{
			MaxSide: defaultTemplateMaxSide,
		},
		Keypoint: Keypoint{
			MaxFeatures:     defaultMaxFeatures,
			FastThreshold:   defaultFastThreshold,
			GoodDistance:    defaultGoodDistance,
			SaturationCount: defaultSaturationCount,
			MaxSide:         defaultKeypointMaxSide,
		},
		Cache: Cache{
			Images: defaultCacheImages,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
