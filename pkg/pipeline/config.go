package pipeline

import (
	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/kinematics"
	"github.com/chenBenjamin97/football-analyzer/pkg/possession"
	"github.com/spf13/viper"
)

//Config gathers the settings of every stage
type Config struct {
	Camera                camera.Config
	PossessionMaxDistance float64
	Kinematics            kinematics.Config
	InterpolateBall       bool //fill ball gaps over the whole table before the first frame
}

func DefaultConfig() Config {
	return Config{
		Camera:                camera.DefaultConfig(),
		PossessionMaxDistance: possession.DefaultMaxDistance,
		Kinematics:            kinematics.DefaultConfig(),
		InterpolateBall:       true,
	}
}

//SetDefaults registers every pipeline key with its default value
func SetDefaults() {
	d := DefaultConfig()
	viper.SetDefault("camera.min_distance", d.Camera.MinDistance)
	viper.SetDefault("camera.border", d.Camera.Border)
	viper.SetDefault("camera.max_corners", d.Camera.MaxCorners)
	viper.SetDefault("camera.quality_level", d.Camera.QualityLevel)
	viper.SetDefault("camera.min_feature_distance", d.Camera.MinFeatureDistance)
	viper.SetDefault("camera.window_size", d.Camera.WindowSize)
	viper.SetDefault("camera.max_level", d.Camera.MaxLevel)
	viper.SetDefault("camera.max_iterations", d.Camera.MaxIterations)
	viper.SetDefault("camera.epsilon", d.Camera.Epsilon)
	viper.SetDefault("possession.max_distance", d.PossessionMaxDistance)
	viper.SetDefault("kinematics.frame_rate", d.Kinematics.FrameRate)
	viper.SetDefault("kinematics.meters_per_pixel", d.Kinematics.MetersPerPixel)
	viper.SetDefault("pipeline.interpolate_ball", d.InterpolateBall)
}

//ConfigFromViper reads the pipeline settings from the global configuration.
//A non-positive kinematics.frame_rate means the source video's own fps (videoFPS) is used.
func ConfigFromViper(videoFPS float64) Config {
	cfg := Config{
		Camera: camera.Config{
			MinDistance:        viper.GetFloat64("camera.min_distance"),
			Border:             viper.GetInt("camera.border"),
			MaxCorners:         viper.GetInt("camera.max_corners"),
			QualityLevel:       viper.GetFloat64("camera.quality_level"),
			MinFeatureDistance: viper.GetFloat64("camera.min_feature_distance"),
			WindowSize:         viper.GetInt("camera.window_size"),
			MaxLevel:           viper.GetInt("camera.max_level"),
			MaxIterations:      viper.GetInt("camera.max_iterations"),
			Epsilon:            viper.GetFloat64("camera.epsilon"),
		},
		PossessionMaxDistance: viper.GetFloat64("possession.max_distance"),
		Kinematics: kinematics.Config{
			FrameRate:      viper.GetFloat64("kinematics.frame_rate"),
			MetersPerPixel: viper.GetFloat64("kinematics.meters_per_pixel"),
		},
		InterpolateBall: viper.GetBool("pipeline.interpolate_ball"),
	}

	if cfg.Kinematics.FrameRate <= 0 {
		cfg.Kinematics.FrameRate = videoFPS
	}

	return cfg
}
