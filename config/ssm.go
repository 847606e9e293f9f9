package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"
)

type dbEntry struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// loadDSNFromSSM fetches database credentials from an encrypted SSM
// parameter holding a YAML dbEntry and builds a DSN for the active driver.
func loadDSNFromSSM(ctx context.Context, paramName, driver string) (string, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", paramName, err)
	}

	var entry dbEntry
	if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &entry); err != nil {
		return "", fmt.Errorf("unmarshal yaml: %w", err)
	}

	switch driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			entry.Username, entry.Password, entry.Host, entry.Port, entry.Name), nil
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
			entry.Host, entry.Port, entry.Username, entry.Password, entry.Name), nil
	default:
		return "", fmt.Errorf("unsupported store driver %q for SSM credentials", driver)
	}
}
