package config

import (
	"fmt"

	"github.com/snowflakedb/gosnowflake"
)

// Snowflake : connection parameters for a single session request
type Snowflake struct {
	Account      string `json:"account"`
	UserName     string `json:"user_name"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Warehouse    string `json:"ware_house"`
	DB           string `json:"db"`
	Schema       string `json:"schema"`
	QueryLogging bool   `json:"query_log"`
}

// GetDSN : builds the gosnowflake dsn , empty fields are passed through so the driver can reject them
func (s *Snowflake) GetDSN() (string, error) {
	tz := "UTC"
	dsn, err := gosnowflake.DSN(&gosnowflake.Config{
		Account:   s.Account,
		User:      s.UserName,
		Password:  s.Password,
		Role:      s.Role,
		Warehouse: s.Warehouse,
		Database:  s.DB,
		Schema:    s.Schema,
		Protocol:  "https",
		Params:    map[string]*string{"timezone": &tz},
	})
	if err != nil {
		return "", fmt.Errorf("SNOWFLAKE_TARGET : could not build dsn for account %q due to : %w", s.Account, err)
	}
	return dsn, nil
}

// Location : DB.SCHEMA prefix used when reporting where a table landed
func (s *Snowflake) Location() string {
	return s.DB + "." + s.Schema
}

// String never includes the password.
func (s Snowflake) String() string {
	return fmt.Sprintf("account=%s user=%s role=%s warehouse=%s db=%s schema=%s password=%s",
		s.Account, s.UserName, s.Role, s.Warehouse, s.DB, s.Schema, redact(s.Password))
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "****"
}
