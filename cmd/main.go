package main

import (
	"log"
	"os"

	"github.com/chenBenjamin97/football-analyzer/pkg/api"
	"github.com/chenBenjamin97/football-analyzer/pkg/pipeline"
	"github.com/spf13/viper"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	setDefaults()

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error: Could not read config file, got '%v'", err)
	}

	//first - create project's data root dir
	if err := os.MkdirAll(viper.GetString("directory.root"), 0766); err != nil {
		log.Printf("Error Creating '%s' directory, got '%v'", viper.GetString("directory.root"), err)
	}

	//create missing directories from config file
	for key := range viper.GetStringMap("directory") {
		dir := viper.GetString("directory." + key)
		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0766); err != nil {
					log.Printf("Error Creating '%s' directory, got '%v'", dir, err)
				}
			}
		}
	}

	if viper.GetString("video.prod_format") == "" || viper.GetString("tracker.script") == "" {
		log.Fatalf("Error: Missing critical configurations")
	}

	r := api.SetRouter()
	if err := r.Run(":" + viper.GetString("http.port")); err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
}

//setDefaults registers a value for every key config.yaml may leave out
func setDefaults() {
	viper.SetDefault("http.port", "8080")
	viper.SetDefault("directory.root", "./data")
	viper.SetDefault("directory.source", "./data/source")
	viper.SetDefault("directory.temp", "./data/temp")
	viper.SetDefault("directory.ready", "./data/ready")
	viper.SetDefault("directory.stubs", "./data/stubs")
	viper.SetDefault("directory.reports", "./data/reports")
	viper.SetDefault("video.prod_format", "mp4")
	viper.SetDefault("video.codec", "XVID")
	viper.SetDefault("tracker.python", "python3")
	viper.SetDefault("tracker.read_from_stub", true)

	pipeline.SetDefaults()
}
