// @title SIH Hackathon Portal API
// @version 1.0
// @description Backend API for hackathon team registration, submissions, judging and leaderboards

// @securityDefinitions.apikey BearerToken
// @in header
// @name Authorization
package main

import (
	_ "github.com/codebreakerd260/SIH2k25-Prod/docs"

	"github.com/codebreakerd260/SIH2k25-Prod/api"
	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	logging.BootstrapLogger()

	// Load env
	if err := godotenv.Load(); err != nil {
		logging.Log.Info("No .env file found, relying on environment")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
