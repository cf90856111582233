package main

import (
	"github.com/kaspanet/ledgercore/infrastructure/logger"
	"github.com/kaspanet/ledgercore/util/panics"
)

var log = logger.RegisterSubSystem("CHCK")
var spawn = panics.GoroutineWrapperFunc(log)
