// Package services implements the driving port interfaces.
// Services hold the lookup logic and orchestrate calls to the
// driven ports: the model, the prompt store and the config store.
package services
