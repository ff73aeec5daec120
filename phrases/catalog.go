package phrases

// Phrase is a single catalog entry: the phrase in the learned language and
// its English translation.
type Phrase struct {
	Original string `json:"original"`
	English  string `json:"english"`
}

var italianEasy = []Phrase{
	{"Buongiorno!", "Good morning!"},
	{"Buonasera!", "Good evening!"},
	{"Buonanotte!", "Good night!"},
	{"Ciao!", "Hi/Bye!"},
	{"A dopo!", "See you later!"},
	{"A domani!", "See you tomorrow!"},
	{"Come va?", "How's it going?"},
	{"Come stai?", "How are you?"},
	{"Tutto bene.", "All good."},
	{"Grazie!", "Thanks!"},
	{"Prego.", "You're welcome."},
	{"Per favore.", "Please."},
	{"Scusa.", "Sorry."},
	{"Un momento.", "One moment."},
	{"Dove sei?", "Where are you?"},
	{"Che ore sono?", "What time is it?"},
	{"Andiamo!", "Let's go!"},
	{"Aspetta!", "Wait!"},
	{"Ho capito.", "Got it."},
	{"Non capisco.", "I don't understand."},
	{"Quanto costa?", "How much is it?"},
	{"Va bene.", "Okay."},
	{"Non lo so.", "I don't know."},
	{"Un caffè, per favore.", "A coffee, please."},
	{"Ho fame.", "I'm hungry."},
	{"Buona giornata!", "Have a nice day!"},
	{"Che bello!", "How nice!"},
	{"Ti chiamo.", "I'll call you."},
	{"Buon appetito!", "Enjoy your meal!"},
	{"Salute!", "Cheers!"},
	{"Come ti chiami?", "What's your name?"},
	{"Piacere di conoscerti.", "Nice to meet you."},
	{"Di dove sei?", "Where are you from?"},
	{"Mi puoi aiutare?", "Can you help me?"},
	{"Tutto a posto?", "Everything okay?"},
	{"Ci vediamo lì.", "See you there."},
}

var italianMedium = []Phrase{
	{"Qual è il tuo cognome?", "What's your last name?"},
	{"Quanti anni hai?", "How old are you?"},
	{"Dove ci incontriamo?", "Where shall we meet?"},
	{"A che ora ci vediamo?", "What time shall we meet?"},
	{"Sono in ritardo di cinque minuti.", "I'm five minutes late."},
	{"Possiamo sentirci più tardi?", "Can we talk later?"},
	{"Che cosa fai stasera?", "What are you doing tonight?"},
	{"Hai voglia di uscire?", "Do you feel like going out?"},
	{"Dove si trova il bagno?", "Where is the bathroom?"},
	{"Mi dispiace, non posso.", "Sorry, I can't."},
	{"Parli più lentamente, per favore.", "Speak more slowly, please."},
	{"Puoi ripetere, per favore?", "Can you repeat, please?"},
	{"Dove posso comprare i biglietti?", "Where can I buy tickets?"},
	{"Vorrei prenotare un tavolo, grazie.", "I'd like to book a table, thanks."},
	{"Cosa consigli da mangiare?", "What do you recommend to eat?"},
	{"Ci può portare il conto, per favore?", "Could you bring us the bill, please?"},
	{"Mi sono perso.", "I'm lost."},
	{"È lontano da qui?", "Is it far from here?"},
	{"Com'è andata la giornata?", "How did your day go?"},
	{"Che tempo fa oggi?", "What's the weather like today?"},
	{"Posso pagare con carta?", "Can I pay by card?"},
	{"Mandami la posizione, per favore.", "Send me your location, please."},
	{"Sei libero questo weekend?", "Are you free this weekend?"},
	{"Devo alzarmi presto domani.", "I have to get up early tomorrow."},
	{"Mi fa male la testa.", "My head hurts."},
	{"Non preoccuparti, ci penso io.", "Don't worry, I'll take care of it."},
	{"Hai bisogno di una mano?", "Do you need a hand?"},
	{"Ci vediamo davanti alla stazione.", "See you in front of the station."},
	{"Scendo alla prossima fermata.", "I'm getting off at the next stop."},
	{"Puoi consigliarmi un buon ristorante?", "Can you recommend a good restaurant?"},
}

var spanishEasy = []Phrase{
	{"¡Hola!", "Hello!"},
	{"Buenos días.", "Good morning."},
	{"Buenas tardes.", "Good afternoon."},
	{"Buenas noches.", "Good night."},
	{"¿Qué tal?", "How's it going?"},
	{"¿Cómo estás?", "How are you?"},
	{"Muy bien, gracias.", "Very well, thanks."},
	{"¿Y tú?", "And you?"},
	{"Mucho gusto.", "Nice to meet you."},
	{"¿Cómo te llamas?", "What's your name?"},
	{"¿De dónde eres?", "Where are you from?"},
	{"Por favor.", "Please."},
	{"Gracias.", "Thanks."},
	{"De nada.", "You're welcome."},
	{"Perdón.", "Sorry."},
	{"Un momento.", "One moment."},
	{"¿Dónde estás?", "Where are you?"},
	{"¿Qué hora es?", "What time is it?"},
	{"¡Vamos!", "Let's go!"},
	{"No entiendo.", "I don't understand."},
	{"¿Cuánto cuesta?", "How much is it?"},
	{"Está bien.", "Okay."},
	{"No lo sé.", "I don't know."},
	{"Un café, por favor.", "A coffee, please."},
	{"Tengo hambre.", "I'm hungry."},
	{"¡Que tengas buen día!", "Have a nice day!"},
	{"¡Suerte!", "Good luck!"},
	{"Te llamo.", "I'll call you."},
	{"¡Buen provecho!", "Enjoy your meal!"},
	{"¡Salud!", "Cheers!"},
	{"¿Qué pasa?", "What's happening?"},
	{"Nos vemos ahí.", "See you there."},
}

var spanishMedium = []Phrase{
	{"¿Cuál es tu apellido?", "What's your last name?"},
	{"¿Cuántos años tienes?", "How old are you?"},
	{"¿Dónde nos encontramos?", "Where shall we meet?"},
	{"¿A qué hora quedamos?", "What time shall we meet?"},
	{"Llego cinco minutos tarde.", "I'm five minutes late."},
	{"¿Podemos hablar más tarde?", "Can we talk later?"},
	{"¿Qué haces esta noche?", "What are you doing tonight?"},
	{"¿Dónde está el baño?", "Where is the bathroom?"},
	{"Lo siento, no puedo.", "Sorry, I can't."},
	{"Habla más despacio, por favor.", "Speak more slowly, please."},
	{"¿Puedes repetir, por favor?", "Can you repeat, please?"},
	{"¿Dónde puedo comprar los boletos?", "Where can I buy tickets?"},
	{"Quisiera reservar una mesa, por favor.", "I'd like to book a table, please."},
	{"¿Qué recomiendas para comer?", "What do you recommend to eat?"},
	{"¿Nos trae la cuenta, por favor?", "Could you bring us the bill, please?"},
	{"Estoy perdido.", "I'm lost."},
	{"¿Está lejos de aquí?", "Is it far from here?"},
	{"¿Cómo estuvo tu día?", "How was your day?"},
	{"¿Qué tiempo hace hoy?", "What's the weather like today?"},
	{"¿Puedo pagar con tarjeta?", "Can I pay by card?"},
	{"Mándame tu ubicación, por favor.", "Send me your location, please."},
	{"¿Estás libre este fin de semana?", "Are you free this weekend?"},
	{"Mañana tengo que levantarme temprano.", "I have to get up early tomorrow."},
	{"Me duele la cabeza.", "My head hurts."},
	{"No te preocupes, yo me encargo.", "Don't worry, I'll take care of it."},
	{"¿Necesitas una mano?", "Do you need a hand?"},
	{"Nos vemos frente a la estación.", "See you in front of the station."},
	{"Me bajo en la próxima parada.", "I'm getting off at the next stop."},
	{"¿Me recomiendas un buen restaurante?", "Can you recommend a good restaurant?"},
}

var frenchEasy = []Phrase{
	{"Bonjour !", "Good morning!"},
	{"Bonsoir !", "Good evening!"},
	{"Bonne nuit !", "Good night!"},
	{"Salut !", "Hi/Bye!"},
	{"À plus tard !", "See you later!"},
	{"À demain !", "See you tomorrow!"},
	{"Ça va ?", "How's it going?"},
	{"Comment tu t'appelles ?", "What's your name?"},
	{"Ravi de te rencontrer.", "Nice to meet you."},
	{"D'où viens-tu ?", "Where are you from?"},
	{"S'il te plaît.", "Please."},
	{"Merci !", "Thanks!"},
	{"De rien.", "You're welcome."},
	{"Pardon.", "Sorry."},
	{"Tu es où ?", "Where are you?"},
	{"Il est quelle heure ?", "What time is it?"},
	{"On y va !", "Let's go!"},
	{"Attends !", "Wait!"},
	{"Je ne comprends pas.", "I don't understand."},
	{"Combien ça coûte ?", "How much is it?"},
	{"Je ne sais pas.", "I don't know."},
	{"Un café, s'il te plaît.", "A coffee, please."},
	{"J'ai faim.", "I'm hungry."},
	{"Bonne journée !", "Have a nice day!"},
	{"Bonne chance !", "Good luck!"},
	{"Bon appétit !", "Enjoy your meal!"},
	{"Santé !", "Cheers!"},
	{"On se retrouve là.", "Meet you there."},
	{"À tout à l'heure.", "See you later."},
	{"Génial !", "Awesome!"},
}

var frenchMedium = []Phrase{
	{"Quel est ton nom de famille ?", "What's your last name?"},
	{"Tu as quel âge ?", "How old are you?"},
	{"On se retrouve où ?", "Where shall we meet?"},
	{"À quelle heure on se voit ?", "What time shall we meet?"},
	{"Je suis en retard de cinq minutes.", "I'm five minutes late."},
	{"On peut parler plus tard ?", "Can we talk later?"},
	{"Tu fais quoi ce soir ?", "What are you doing tonight?"},
	{"Où sont les toilettes ?", "Where is the bathroom?"},
	{"Désolé, je ne peux pas.", "Sorry, I can't."},
	{"Parle plus lentement, s'il te plaît.", "Speak more slowly, please."},
	{"Tu peux répéter, s'il te plaît ?", "Can you repeat, please?"},
	{"Où puis-je acheter des billets ?", "Where can I buy tickets?"},
	{"Je voudrais réserver une table, s'il vous plaît.", "I'd like to book a table, please."},
	{"Qu'est-ce que tu conseilles à manger ?", "What do you recommend to eat?"},
	{"On peut avoir l'addition, s'il vous plaît ?", "Could we have the bill, please?"},
	{"Je suis perdu.", "I'm lost."},
	{"C'est loin d'ici ?", "Is it far from here?"},
	{"Comment s'est passée ta journée ?", "How was your day?"},
	{"Quel temps fait-il aujourd'hui ?", "What's the weather like today?"},
	{"Je peux payer par carte ?", "Can I pay by card?"},
	{"Envoie-moi ta position, s'il te plaît.", "Send me your location, please."},
	{"Tu es libre ce week-end ?", "Are you free this weekend?"},
	{"Je dois me lever tôt demain.", "I have to get up early tomorrow."},
	{"J'ai mal à la tête.", "My head hurts."},
	{"T'inquiète pas, je m'en occupe.", "Don't worry, I'll take care of it."},
	{"Tu as besoin d'un coup de main ?", "Do you need a hand?"},
	{"On se retrouve devant la gare.", "See you in front of the station."},
	{"Je descends au prochain arrêt.", "I'm getting off at the next stop."},
	{"Tu peux me recommander un bon resto ?", "Can you recommend a good restaurant?"},
}

var japaneseEasy = []Phrase{
	{"こんにちは (Konnichiwa)", "Hello."},
	{"おはようございます (Ohayou gozaimasu)", "Good morning."},
	{"こんばんは (Konbanwa)", "Good evening."},
	{"おやすみなさい (Oyasuminasai)", "Good night."},
	{"またね (Mata ne)", "See you."},
	{"また明日 (Mata ashita)", "See you tomorrow."},
	{"元気ですか？ (Genki desu ka?)", "How are you?"},
	{"元気です (Genki desu)", "I'm fine."},
	{"ありがとうございます (Arigatou gozaimasu)", "Thank you very much."},
	{"どういたしまして (Dou itashimashite)", "You're welcome."},
	{"すみません (Sumimasen)", "Excuse me."},
	{"ごめんなさい (Gomen nasai)", "I'm sorry."},
	{"大丈夫です (Daijoubu desu)", "It's okay."},
	{"ちょっと待って (Chotto matte)", "Wait a sec."},
	{"どこにいますか？ (Doko ni imasu ka?)", "Where are you?"},
	{"今何時ですか？ (Ima nanji desu ka?)", "What time is it?"},
	{"行きましょう！ (Ikimashou!)", "Let's go!"},
	{"わかりました (Wakarimashita)", "Got it."},
	{"わかりません (Wakarimasen)", "I don't understand."},
	{"いくらですか？ (Ikura desu ka?)", "How much is it?"},
	{"お願いします (Onegaishimasu)", "Please."},
	{"知りません (Shirimasen)", "I don't know."},
	{"水をください (Mizu o kudasai)", "Water, please."},
	{"がんばって！ (Ganbatte!)", "Good luck!"},
	{"すごい！ (Sugoi!)", "Awesome!"},
	{"なるほど (Naruhodo)", "I see."},
	{"電話します (Denwa shimasu)", "I'll call you."},
	{"助かります (Tasukarimasu)", "That helps."},
	{"よろしくお願いします (Yoroshiku onegaishimasu)", "Nice to meet you."},
}

var japaneseMedium = []Phrase{
	{"お名前は何ですか？ (Onamae wa nan desu ka?)", "What is your name?"},
	{"どこに住んでいますか？ (Doko ni sundeimasu ka?)", "Where do you live?"},
	{"ご出身はどちらですか？ (Goshusshin wa dochira desu ka?)", "Where are you from?"},
	{"これは何ですか？ (Kore wa nan desu ka?)", "What is this?"},
	{"どういう意味ですか？ (Dou iu imi desu ka?)", "What does it mean?"},
	{"英語を話せますか？ (Eigo o hanasemasu ka?)", "Can you speak English?"},
	{"もう一度お願いします (Mou ichido onegaishimasu)", "One more time, please."},
	{"ゆっくり話してください (Yukkuri hanashite kudasai)", "Please speak slowly."},
	{"おすすめは何ですか？ (Osusume wa nan desu ka?)", "What do you recommend?"},
	{"駅はどこですか？ (Eki wa doko desu ka?)", "Where is the station?"},
	{"トイレはどこですか？ (Toire wa doko desu ka?)", "Where is the restroom?"},
	{"一緒に行きませんか？ (Issho ni ikimasen ka?)", "Shall we go together?"},
	{"時間がありますか？ (Jikan ga arimasu ka?)", "Do you have time?"},
	{"どこで買えますか？ (Doko de kaemasu ka?)", "Where can I buy it?"},
	{"カードで払えますか？ (Kaado de haraemasu ka?)", "Can I pay by card?"},
	{"予約をしたいです (Yoyaku o shitai desu)", "I'd like to make a reservation."},
	{"お会計お願いします (Okaikei onegaishimasu)", "The check, please."},
	{"バス停はどこですか？ (Basutei wa doko desu ka?)", "Where is the bus stop?"},
	{"ここから遠いですか？ (Koko kara tooi desu ka?)", "Is it far from here?"},
	{"電車で行けますか？ (Densha de ikemasu ka?)", "Can I go by train?"},
	{"天気はどうですか？ (Tenki wa dou desu ka?)", "How's the weather?"},
	{"疲れました (Tsukaremashita)", "I'm tired."},
	{"お腹がすいています (Onaka ga suite imasu)", "I'm hungry."},
	{"気をつけて！ (Ki o tsukete!)", "Take care!"},
	{"大丈夫ですか？ (Daijoubu desu ka?)", "Are you okay?"},
	{"後で連絡します (Ato de renraku shimasu)", "I'll contact you later."},
	{"また会いましょう (Mata aimashou)", "Let's meet again."},
	{"頑張ってください (Ganbatte kudasai)", "Please do your best."},
}

var catalogs = map[string]map[string][]Phrase{
	"italian":  {"easy": italianEasy, "medium": italianMedium},
	"spanish":  {"easy": spanishEasy, "medium": spanishMedium},
	"french":   {"easy": frenchEasy, "medium": frenchMedium},
	"japanese": {"easy": japaneseEasy, "medium": japaneseMedium},
}

// fallbacks are returned when a catalog is empty, rather than failing a send.
var fallbacks = map[string]Phrase{
	"italian":  {"Ciao!", "Hi!"},
	"spanish":  {"¡Hola!", "Hello!"},
	"french":   {"Bonjour !", "Hello!"},
	"japanese": {"こんにちは！ (Konnichiwa!)", "Hello!"},
}

var flags = map[string]string{
	"italian":  "🇮🇹",
	"spanish":  "🇪🇸",
	"french":   "🇫🇷",
	"japanese": "🇯🇵",
}

// EnglishFlag prefixes the translation line of every notification body.
const EnglishFlag = "🇬🇧"

// ResolveCatalog maps a requested pair onto the catalog actually served.
// Unknown values fall back to italian/easy, mirroring subscription defaults.
func ResolveCatalog(language, difficulty string) (string, string) {
	if _, ok := catalogs[language]; !ok {
		language = "italian"
	}
	if _, ok := catalogs[language][difficulty]; !ok {
		difficulty = "easy"
	}
	return language, difficulty
}

// Catalog returns the phrase list for a language and difficulty.
func Catalog(language, difficulty string) []Phrase {
	language, difficulty = ResolveCatalog(language, difficulty)
	return catalogs[language][difficulty]
}

// Fallback returns the designated emergency phrase for a language.
func Fallback(language string) Phrase {
	if phrase, ok := fallbacks[language]; ok {
		return phrase
	}
	return fallbacks["italian"]
}

// Flag returns the flag emoji shown in notification titles for a language.
func Flag(language string) string {
	if flag, ok := flags[language]; ok {
		return flag
	}
	return flags["italian"]
}
