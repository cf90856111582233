package ldb

import "github.com/kaspanet/ledgercore/infrastructure/logger"

var log = logger.RegisterSubSystem("LVDB")
