// Package plans содержит статическую таблицу тарифов: отображение
// отображаемого имени тарифа в целочисленную квоту попыток.
// Таблица неизменяема после старта процесса.
package plans

// quotas — закрытый набор известных тарифов.
var quotas = map[string]int{
	"Saas Pro Monthly":     100,
	"Saas Pro Yearly":      500,
	"Saas Premium Monthly": 300,
	"Saas Premium Yearly":  1000,
}

// Quota возвращает квоту попыток для тарифа по его отображаемому имени.
// Второе значение false означает неизвестный тариф: вызывающая сторона
// обязана вернуть ошибку, а не продолжать с нулевой квотой.
func Quota(planName string) (int, bool) {
	q, ok := quotas[planName]
	return q, ok
}
