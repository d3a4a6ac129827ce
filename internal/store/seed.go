package store

// seed.go generates textile trade-order records for development and demos.
//
// Output depends only on (n, seed).

import (
	"fmt"
	"math/rand/v2"

	"github.com/JonMunkholm/searchtable/internal/core"
)

// SeedAnchor is the latest contract date Seed produces.
var SeedAnchor = core.Date(2025, 3, 31)

var (
	familyNames          = []string{"佐藤", "鈴木", "高橋", "田中", "伊藤", "渡辺", "山本", "中村"}
	givenNames           = []string{"太郎", "花子", "健一", "美咲", "裕介", "彩香", "翔太", "恵理"}
	categories           = []string{"原料部", "紡績部", "テキスタイル営業部", "輸出入管理部"}
	statuses             = []string{"輸入係", "国内係", "品質係", "物流係"}
	productNames         = []string{"コットンツイル", "オーガニックデニム", "リネンキャンバス", "ウールトロピカル", "テンセルサテン", "シルクシフォン", "ナイロンタフタ", "ポリエステルジャージ"}
	countriesOfOrigin    = []string{"日本", "中国", "ベトナム", "インド", "インドネシア", "タイ", "トルコ", "イタリア"}
	destinationCountries = []string{"日本", "アメリカ", "ドイツ", "フランス", "ベトナム", "インドネシア", "中国", "韓国"}
	fabricTypes          = []string{"織物", "編物", "不織布", "起毛生地"}
	yarnCounts           = []string{"20/1", "30/2", "40/1", "50/2", "60/1"}
	weaveStructures      = []string{"平織", "綾織", "朱子織", "二重織"}
	brands               = []string{"GLOBAL TEXTILE", "NIPPON FABRIC", "ASIA THREADS", "OCEANIC LINEN"}
	seasons              = []string{"SS24", "AW24", "SS25", "AW25"}
	usages               = []string{"スーツ", "ワンピース", "ユニフォーム", "スポーツウェア", "寝具"}
	tradingHouses        = []string{"東亜繊維商事", "北海テキスタイル", "大洋商社", "京浜トレーディング"}
	suppliers            = []string{"上海繊維有限公司", "ハノイファブリック", "デリーコットン", "大阪糸業"}
	mills                = []string{"蘇州第一紡績", "ホーチミン織布", "名古屋撚糸", "バンコク染工"}
	grades               = []string{"A", "B", "C"}
	transportModes       = []string{"海上", "航空", "鉄道", "トラック"}
	incoterms            = []string{"FOB", "CIF", "CFR", "DAP"}
	currencies           = []string{"JPY", "USD", "EUR", "CNY"}
	paymentTerms         = []string{"L/C at sight", "TT 30 days", "TT 60 days", "D/P"}
	vesselNames          = []string{"MV ORIENT STAR", "MV PACIFIC WIND", "MV ASIA BREEZE", "MV TOKYO BAY"}
	routes               = []string{"上海-横浜", "ホーチミン-神戸", "ムンバイ-大阪", "ハンブルク-東京"}
	shippingCompanies    = []string{"東洋海運", "太平洋ライン", "北極海運", "南星ライン"}
	containerPrefixes    = []string{"MSCU", "NYKU", "ONEU", "TGHU"}
	packageUnits         = []string{"反", "ケース", "ロール"}
	warehouses           = []string{"東京湾倉庫A", "横浜物流センター", "神戸港第3倉庫", "名古屋保税庫"}
	warehouseStaff       = []string{"山田", "小林", "加藤", "石井"}
	clearanceStaff       = []string{"松本", "阿部", "長谷川", "森"}
	customsBrokers       = []string{"日本通関サービス", "港湾通関", "東亜申告", "ワールドカスタム"}
	insuranceCompanies   = []string{"東京海上", "三井住友海上", "損保ジャパン", "AIG損保"}
	inspectionStaff      = []string{"佐々木", "岡本", "村上", "福田"}
	inspectionAgencies   = []string{"日本繊維検査協会", "アジア品質センター", "国際検査機構"}
	sampleResponses      = []string{"承認", "条件付き承認", "差戻し"}
	claimDetails         = []string{"色差異", "寸法ズレ", "汚れ", "糸抜け"}
	responseStatuses     = []string{"対応中", "完了", "調整中"}
	finalCustomers       = []string{"東京アパレル", "京都テキスタイル", "ニューヨークファッション", "パリコレクション"}
	endUses              = []string{"スーツ", "カジュアルシャツ", "インテリア", "スポーツユニフォーム"}
	deliveryDestinations = []string{"大阪物流センター", "東京本社倉庫", "名古屋配送拠点", "福岡DC"}
	deliveryAddresses    = []string{"大阪府堺市築港南町1-1", "東京都江東区青海2-3-5", "愛知県海部郡飛島村大宝7-12", "福岡県福岡市東区箱崎ふ頭4-8"}
	remarks              = []string{"特記事項なし", "要サンプル確認", "輸送温度管理要", "次回価格改定予定"}
)

// Seed returns n generated records with IDs 1..n.
func Seed(n int, seed uint64) []*core.Record {
	g := &generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}

	out := make([]*core.Record, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		out = append(out, g.record(int64(i)))
	}
	return out
}

type generator struct {
	rng *rand.Rand
}

// between returns a value in [lo, hi).
func (g *generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo)
}

func (g *generator) pick(values []string) string {
	return values[g.rng.IntN(len(values))]
}

func (g *generator) record(id int64) *core.Record {
	contract := SeedAnchor.AddDate(0, 0, -g.between(0, 365))
	quote := contract.AddDate(0, 0, -g.between(5, 30))
	shipment := contract.AddDate(0, 0, g.between(15, 90))
	arrival := shipment.AddDate(0, 0, g.between(7, 25))
	inbound := arrival.AddDate(0, 0, g.between(1, 5))
	outbound := inbound.AddDate(0, 0, g.between(3, 14))
	inspection := inbound.AddDate(0, 0, g.between(0, 3))
	sampleSent := contract.AddDate(0, 0, g.between(0, 10))
	sampleReply := sampleSent.AddDate(0, 0, g.between(1, 10))

	quantity := g.between(500, 5000)
	exchangeRate := 0.7 + g.rng.Float64()*0.8
	unitPrice := 250 + g.between(100, 950)
	packages := g.between(5, 50)
	weight := float64(quantity) * (0.25 + g.rng.Float64()*0.4)
	claim := "無"
	if g.rng.IntN(5) == 0 {
		claim = "有"
	}

	r := &core.Record{
		ID:        id,
		Category:  g.pick(categories),
		Status:    g.pick(statuses),
		UpdatedAt: contract,
		Amount:    int64(quantity),
		Name:      g.pick(familyNames) + " " + g.pick(givenNames),
	}

	f := &r.Fields
	f[0] = fmt.Sprintf("PO-%d-%04d", contract.Year(), id)
	f[1] = fmt.Sprintf("TX-%d", g.between(1000, 9999))
	f[2] = g.pick(productNames)
	f[3] = g.pick(countriesOfOrigin)
	f[4] = g.pick(destinationCountries)
	f[5] = g.pick(fabricTypes)
	f[6] = g.pick(yarnCounts)
	f[7] = g.pick(weaveStructures)
	f[8] = fmt.Sprintf("%d g/m²", g.between(120, 320))
	f[9] = fmt.Sprintf("%d cm", g.between(90, 160))
	f[10] = fmt.Sprintf("C%d", g.between(100, 999))
	f[11] = fmt.Sprintf("LOT%d", g.between(1000, 9999))
	f[12] = g.pick(brands)
	f[13] = g.pick(seasons)
	f[14] = g.pick(usages)
	f[15] = g.pick(tradingHouses)
	f[16] = g.pick(suppliers)
	f[17] = g.pick(mills)
	f[18] = g.pick(grades)
	if g.rng.IntN(2) == 0 {
		f[19] = "輸入"
	} else {
		f[19] = "輸出"
	}
	f[20] = g.pick(transportModes)
	f[21] = g.pick(incoterms)
	f[22] = g.pick(currencies)
	f[23] = fmt.Sprintf("%.3f", exchangeRate)
	f[24] = groupThousands(unitPrice) + " JPY/kg"
	f[25] = fmt.Sprintf("QT-%d-%04d", quote.Year(), id)
	f[26] = quote.Format(core.DateLayout)
	f[27] = fmt.Sprintf("CN-%d-%04d", contract.Year(), id)
	f[28] = g.pick(paymentTerms)
	f[29] = shipment.Format(core.DateLayout)
	f[30] = g.pick(vesselNames)
	f[31] = g.pick(routes)
	f[32] = g.pick(shippingCompanies)
	f[33] = fmt.Sprintf("BL%s%s%d", contract.Format("06"), shipment.Format("0102"), g.between(100, 999))
	f[34] = fmt.Sprintf("%s%d", g.pick(containerPrefixes), g.between(1000000, 9999999))
	f[35] = fmt.Sprint(packages)
	f[36] = g.pick(packageUnits)
	f[37] = fmt.Sprintf("%.1f kg", weight)
	f[38] = "kg"
	f[39] = g.pick(warehouses)
	f[40] = g.pick(warehouseStaff)
	f[41] = inbound.Format(core.DateLayout)
	f[42] = outbound.Format(core.DateLayout)
	f[43] = g.pick(clearanceStaff)
	f[44] = g.pick(customsBrokers)
	f[45] = fmt.Sprintf("%.2f%%", 5+g.rng.Float64()*7)
	f[46] = groupThousands(g.between(10000, 90000)) + " JPY"
	f[47] = g.pick(insuranceCompanies)
	f[48] = fmt.Sprintf("IC-%s%d", contract.Format("06"), g.between(10000, 99999))
	f[49] = groupThousands(g.between(500000, 2000000)) + " JPY"
	f[50] = inspection.Format(core.DateLayout)
	f[51] = g.pick(inspectionStaff)
	f[52] = g.pick(inspectionAgencies)
	f[53] = fmt.Sprintf("SMP-%s%d", contract.Format("06"), g.between(1000, 9999))
	f[54] = sampleSent.Format(core.DateLayout)
	f[55] = fmt.Sprintf("%s (%s)", g.pick(sampleResponses), sampleReply.Format(core.DateLayout))
	f[56] = claim
	if claim == "有" {
		f[57] = g.pick(claimDetails)
	} else {
		f[57] = "なし"
	}
	f[58] = g.pick(responseStatuses)
	f[59] = g.pick(finalCustomers)
	f[60] = g.pick(endUses)
	f[61] = g.pick(deliveryDestinations)
	f[62] = g.pick(deliveryAddresses)
	f[63] = g.pick(remarks)

	return r
}

// groupThousands formats a non-negative integer with comma separators.
func groupThousands(n int) string {
	s := fmt.Sprint(n)
	if len(s) <= 3 {
		return s
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out := s[:lead]
	for i := lead; i < len(s); i += 3 {
		out += "," + s[i:i+3]
	}
	return out
}
