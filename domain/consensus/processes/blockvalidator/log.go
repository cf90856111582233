package blockvalidator

import (
	"github.com/kaspanet/ledgercore/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BVAL")
