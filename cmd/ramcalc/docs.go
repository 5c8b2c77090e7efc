package main

// General API documentation for swaggo. Regenerate docs/ with:
//
//	swag init -g cmd/ramcalc/docs.go -d ./,./internal/httpapi,./pkg/types -o docs
//
// @title           ramcalc API
// @version         1.0
// @description     HTTP API for estimating the system RAM needed to run a large language model locally.
//
// @contact.name   ramcalc maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
