package externalapi

// UTXOEntry houses details about an individual transaction output in a utxo
// set such as whether or not it was contained in a coinbase tx, the height
// of the block that created it, and the output itself.
type UTXOEntry interface {
	Output() *DomainTransactionOutput
	Amount() uint64             // Utxo amount in Sompis
	PublicKey() DomainPublicKey // The key of the output's owner
	BlockHeight() uint64        // Height of the block that created the output
	IsCoinbase() bool
	Equal(other UTXOEntry) bool
}

// OutpointAndUTXOEntryPair is an outpoint along with its
// respective UTXO entry
type OutpointAndUTXOEntryPair struct {
	Outpoint  *DomainOutpoint
	UTXOEntry UTXOEntry
}
