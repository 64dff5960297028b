// Package models defines the client-side view of ResQSync API payloads.
package models
