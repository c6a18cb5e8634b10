package component

type Wallet struct {
	Coins int
}

var WalletComponent = NewComponent[Wallet]()
