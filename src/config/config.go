package config

import (
	"fmt"
	"os"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

// WebpayHost Base URL of the Webpay REST API, without a trailing slash
func WebpayHost() string {
	return os.Getenv("WEBPAY_HOST")
}

// WebpayCommerceCode Value for the Tbk-Api-Key-Id header
func WebpayCommerceCode() string {
	return os.Getenv("WEBPAY_COMMERCE_CODE")
}

// WebpayAPIKey Value for the Tbk-Api-Key-Secret header
func WebpayAPIKey() string {
	return os.Getenv("WEBPAY_API_KEY")
}

// WebpayReturnURL Where the gateway sends the payer's browser after checkout
func WebpayReturnURL() string {
	returnURL := os.Getenv("WEBPAY_RETURN_URL")
	if returnURL == "" {
		returnURL = fmt.Sprintf("%s/api/v1/payments/webpay/return", os.Getenv("API_HOST"))
	}
	return returnURL
}

// AppScheme Custom URI scheme of the mobile app, used by the redirect bridge
func AppScheme() string {
	scheme := os.Getenv("APP_SCHEME")
	if scheme == "" {
		scheme = "rentabarrio"
	}
	return scheme
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// BUY_ORDER_MAX_LEN Webpay rejects buy_order values longer than this
const BUY_ORDER_MAX_LEN = 26

// SESSION_ID_MAX_LEN Webpay rejects session_id values longer than this
const SESSION_ID_MAX_LEN = 61
