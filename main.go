// package main is a module for the RF front-end filter switch
package main

import (
	"github.com/viam-modules/rf-frontend/frontend"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/module"
	"go.viam.com/rdk/resource"
)

func main() {
	module.ModularMain(
		resource.APIModel{API: sensor.API, Model: frontend.Model},
	)
}
