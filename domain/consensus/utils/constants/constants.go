package constants

// SompiPerCoin is the number of sompi in one coin. Block rewards are
// configured in whole coins and paid in sompi.
const SompiPerCoin = 100_000_000
