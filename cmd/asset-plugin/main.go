package main

import (
	_ "github.com/fxpio/composer-asset-plugin-sub001/pkg/asset/bower"
	_ "github.com/fxpio/composer-asset-plugin-sub001/pkg/asset/npm"
	"github.com/fxpio/composer-asset-plugin-sub001/pkg/cmd"
)

func main() {
	cmd.Execute()
}
