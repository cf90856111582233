package consensus

import (
	"github.com/kaspanet/ledgercore/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CNSS")
