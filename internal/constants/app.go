// Package constants provides shared constants for the jam-admin application
package constants

// AppName is shown in page titles and logged on startup
const AppName = "Jam app - Admin"
