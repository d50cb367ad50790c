// Package plan 定义订阅套餐目录和权益判定，全部是无副作用的纯函数
package plan

import "time"

// 套餐名称
const (
	Free  = "Free"
	Basic = "Basic"
	Pro   = "Pro"
	VIP   = "VIP"
)

// BasicDuration Basic 套餐的有效期
const BasicDuration = 30 * 24 * time.Hour

// Detail 可购买套餐的定价与权益说明
type Detail struct {
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"` // 美分
	Price      string   `json:"price"`
	Features   []string `json:"features"`
	Permanent  bool     `json:"permanent"` // false 表示按 BasicDuration 计算到期时间
}

// Catalog 返回可购买的套餐目录（Free 不可购买）
func Catalog() []Detail {
	return []Detail{
		{
			Name:       Basic,
			PriceCents: 499,
			Price:      "$4.99/mes",
			Features:   []string{"Sube videos ilimitados", "Acceso a videos premium", "Sin anuncios en tus videos", "Dura 1 mes"},
			Permanent:  false,
		},
		{
			Name:       Pro,
			PriceCents: 999,
			Price:      "$9.99/mes",
			Features:   []string{"Todo lo de Básico", "Personalización avanzada de canales", "Soporte prioritario", "Permanente"},
			Permanent:  true,
		},
		{
			Name:       VIP,
			PriceCents: 1999,
			Price:      "$19.99/mes",
			Features:   []string{"Todo lo de Pro", "Acceso temprano a nuevas funciones", "Soporte VIP 24/7", "Estadísticas avanzadas"},
			Permanent:  true,
		},
	}
}

// Lookup 按名称查找可购买套餐
func Lookup(name string) (Detail, bool) {
	for _, d := range Catalog() {
		if d.Name == name {
			return d, true
		}
	}
	return Detail{}, false
}

// Active 判断用户当前是否持有生效中的付费权益
//   - Pro / VIP 永久生效，不看到期时间
//   - Basic 仅在到期时间存在且严格晚于 now 时生效
//   - Free 或未知值一律不生效
func Active(p string, expiry *time.Time, now time.Time) bool {
	switch p {
	case Pro, VIP:
		return true
	case Basic:
		return expiry != nil && expiry.After(now)
	default:
		return false
	}
}
