package service

import "github.com/vraj1599/jasubhaichappal/internal/models"

// MergeCartItem добавляет позицию в корзину. Совпадение ищется по полному ключу
// варианта (товар, размер, цвет): тот же товар другого размера считается отдельной позицией.
func MergeCartItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].SameVariant(item) {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

// RemoveCartItems удаляет все позиции с точно совпадающим ключом варианта.
func RemoveCartItems(items []models.CartItem, key models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		if it.SameVariant(key) {
			continue
		}
		out = append(out, it)
	}
	return out
}
