package app

import (
	"fmt"
	"math/rand/v2"
)

// Canned encouragement lines offered by the editor's suggestion button.
var scriptureMessages = []string{
	"Salmo 37:25: Fui jovem e agora sou velho, mas nunca vi um justo abandonado.",
	"Provérbios 10:3: Jeová não fará o justo passar fome.",
	"Isaías 30:15: A vossa força estará em permanecerem calmos e terem confiança.",
	"Filipenses 4:13: Para todas as coisas tenho forças graças àquele que me dá poder.",
	"Jeremias 29:11: Quero dar-lhes um futuro e uma esperança.",
	"Salmo 55:22: Lança o teu fardo sobre Jeová, e ele amparar-te-á.",
	"Isaías 41:10: Não tenhas medo, pois estou contigo.",
}

const scriptureCategory = "Teocrático"

// MessageSuggestions returns a shuffled batch of suggestions for the given
// category. Unknown categories get generic encouragement lines built around
// the category word itself.
func (a *App) MessageSuggestions(category string) []string {
	if category == scriptureCategory {
		out := make([]string, len(scriptureMessages))
		copy(out, scriptureMessages)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		if len(out) > 4 {
			out = out[:4]
		}
		return out
	}
	if category == "" {
		category = "coragem"
	}
	return []string{
		fmt.Sprintf("Para %s: acredite que cada dia traz uma nova oportunidade de vencer.", category),
		fmt.Sprintf("Em momentos de %s, lembre-se da sua força interior.", category),
		fmt.Sprintf("Que a %s encha seu coração de paz e alegria.", category),
		fmt.Sprintf("Você é um exemplo de %s para todos nós.", category),
	}
}
