package orchestrator

import (
	"github.com/AlexZinkM/wallet-connect/internal/model"
)

// Well known EIP-6963 reverse-DNS names.
const (
	RDNSMetaMask = "io.metamask"
	RDNSPhantom  = "app.phantom"
	RDNSKeplr    = "app.keplr"
	RDNSCoinbase = "com.coinbase.wallet"
)

const (
	MetaMaskDownloadLink = "https://metamask.io/download/"
	PhantomDownloadLink  = "https://phantom.app/download"
	KeplrDownloadLink    = "https://www.keplr.app/download"
)

// suppressed injected providers are served by their dedicated connectors instead.
var suppressed = map[string]bool{
	RDNSPhantom:  true,
	RDNSKeplr:    true,
	RDNSCoinbase: true,
}

// Wallets lists the tiles of the wallet picker.
// Injected wallets come first (MetaMask pinned on top), then Coinbase, WalletConnect, Phantom and Keplr.
// Missing MetaMask, Phantom or Keplr providers are listed as DOWNLOAD_WALLET tiles.
func (o *Orchestrator) Wallets() []model.WalletDetail {
	var (
		metaMask *model.WalletDetail
		injected []model.WalletDetail
		seen     = make(map[string]bool)
	)

	for _, p := range o.registry.Providers() {
		rdns := p.Info.RDNS
		if rdns == "" || seen[rdns] || suppressed[rdns] {
			continue
		}
		seen[rdns] = true

		d := model.WalletDetail{
			ConnectorType: model.ConnectorInjected,
			Name:          p.Info.Name,
			Icon:          p.Info.Icon,
			RDNS:          rdns,
		}
		if rdns == RDNSMetaMask {
			metaMask = &d
			continue
		}
		injected = append(injected, d)
	}

	list := make([]model.WalletDetail, 0, len(injected)+5)
	if metaMask != nil {
		list = append(list, *metaMask)
	} else {
		list = append(list, model.WalletDetail{
			ConnectorType: model.ConnectorDownload,
			Name:          "MetaMask",
			Icon:          "metamask.svg",
			RDNS:          RDNSMetaMask,
			DownloadLink:  MetaMaskDownloadLink,
		})
	}
	list = append(list, injected...)

	if o.conn.Wagmi.HasNamed(model.ConnectorCoinbase) {
		list = append(list, model.WalletDetail{
			ConnectorType: model.ConnectorCoinbase,
			Name:          "Coinbase Wallet",
			Icon:          "coinbase.svg",
			RDNS:          RDNSCoinbase,
		})
	}
	if o.conn.Wagmi.HasNamed(model.ConnectorWalletConnect) {
		list = append(list, model.WalletDetail{
			ConnectorType: model.ConnectorWalletConnect,
			Name:          "WalletConnect",
			Icon:          "walletconnect.svg",
		})
	}

	phantom := model.WalletDetail{Name: "Phantom", Icon: "phantom.svg", RDNS: RDNSPhantom}
	if o.conn.Phantom.HasPhantomWallet() {
		phantom.ConnectorType = model.ConnectorPhantomSolana
	} else {
		phantom.ConnectorType = model.ConnectorDownload
		phantom.DownloadLink = PhantomDownloadLink
	}

	keplr := model.WalletDetail{Name: "Keplr", Icon: "keplr.svg", RDNS: RDNSKeplr}
	if o.conn.Keplr.HasKeplrWallet() {
		keplr.ConnectorType = model.ConnectorCosmos
	} else {
		keplr.ConnectorType = model.ConnectorDownload
		keplr.DownloadLink = KeplrDownloadLink
	}

	return append(list, phantom, keplr)
}
