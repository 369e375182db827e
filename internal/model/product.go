package model

// ScanPackage 是可购买的扫描次数包
// 与 Google Play 后台配置的商品一一对应
type ScanPackage struct {
	ProductID      string  `json:"product_id"`
	Scans          int     `json:"scans"`
	PriceUSD       float64 `json:"price_usd"`
	SavingsPercent int     `json:"savings_percent"`
}

// ScanPackages 预定义的商品目录
// 未知 product_id 一律拒绝，不做任何余额变更
var ScanPackages = []ScanPackage{
	{ProductID: "com.icalorie.scans.5", Scans: 5, PriceUSD: 0.99, SavingsPercent: 0},
	{ProductID: "com.icalorie.scans.15", Scans: 15, PriceUSD: 2.49, SavingsPercent: 17},
	{ProductID: "com.icalorie.scans.50", Scans: 50, PriceUSD: 4.99, SavingsPercent: 50},
}

// PricePerScan 单次扫描的基准价，用于前端展示折扣
const PricePerScan = 0.10

// FindScanPackage 按商品 ID 查找次数包
func FindScanPackage(productID string) (ScanPackage, bool) {
	for _, p := range ScanPackages {
		if p.ProductID == productID {
			return p, true
		}
	}
	return ScanPackage{}, false
}
