// Command storefront-metrics calcule les métriques dérivées du dashboard
// d'administration du storefront.
package main

import (
	"storefront-metrics/pkg/cli"
)

func main() {
	cli.Execute()
}
