package api

import (
	"sync"

	"github.com/codebreakerd260/SIH2k25-Prod/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
}

type StorageConfig struct {
	TableNameUsers       string
	TableNameTeams       string
	TableNameRounds      string
	TableNameSubmissions string
	TableNameScores      string
	TableNameCriteria    string
	TableNameProblems    string
}

type ServerConfig struct {
	Port int
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameUsers:       viper.GetString("storage.TableNameUsers"),
			TableNameTeams:       viper.GetString("storage.TableNameTeams"),
			TableNameRounds:      viper.GetString("storage.TableNameRounds"),
			TableNameSubmissions: viper.GetString("storage.TableNameSubmissions"),
			TableNameScores:      viper.GetString("storage.TableNameScores"),
			TableNameCriteria:    viper.GetString("storage.TableNameCriteria"),
			TableNameProblems:    viper.GetString("storage.TableNameProblems"),
		},
		ServerConfig: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}
