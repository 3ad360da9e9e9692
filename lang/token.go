package lang

import "strconv"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// KindEOF is the synthetic end-of-input marker. It is always the final
	// token of a scan; it never appears mid-stream.
	KindEOF Kind = iota

	KindIdent
	KindInt
	KindFloat
	KindString
	KindBool

	KindSigil     // $
	KindSemicolon // ;
	KindColon     // :
	KindComma     // ,
	KindConcat    // +
	KindMinus     // -
	KindAssign    // =
	KindTilde     // ~
	KindEllipsis  // ..
	KindJunction  // <-
	KindPoint     // .
	KindLBrace    // {
	KindRBrace    // }
	KindLBracket  // [
	KindRBracket  // ]
	KindLParen    // (
	KindRParen    // )

	// Keywords. EDL keywords are Cyrillic and script-sensitive: an
	// identifier matches a keyword only byte-for-byte.
	KindEquipment    // оборудование
	KindObjectType   // класс_а, класс_ц
	KindTemplate     // шаблон
	KindContext      // контекст
	KindConnection   // соединение
	KindSignal       // сигнал
	KindSignalOption // статус, важность, отображать, метка, параметр
	KindConnOption   // обработчик
	KindDirection    // входной, выходной
	KindSignalType   // аналог, дискрет
	KindUse          // использовать
	KindUseMethod    // линейно
	KindValues       // значения
	KindExcept       // кроме
	KindAll          // все
	KindPut          // подстановка
	KindRule         // правило
	KindIn           // в
	KindFrom         // из
	KindBind         // привязать
	KindRange        // диапазон
	KindStatusConst  // норма, авария, тревога
	KindIter         // i
	KindTypeInt      // int
	KindTypeFloat    // float
	KindTypeStr      // str
	KindTypeBool     // bool
	KindTypeArray    // arr
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindIdent:
		return "identifier"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindSigil:
		return "$"
	case KindSemicolon:
		return ";"
	case KindColon:
		return ":"
	case KindComma:
		return ","
	case KindConcat:
		return "+"
	case KindMinus:
		return "-"
	case KindAssign:
		return "="
	case KindTilde:
		return "~"
	case KindEllipsis:
		return ".."
	case KindJunction:
		return "<-"
	case KindPoint:
		return "."
	case KindLBrace:
		return "{"
	case KindRBrace:
		return "}"
	case KindLBracket:
		return "["
	case KindRBracket:
		return "]"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindEquipment:
		return "оборудование"
	case KindObjectType:
		return "object type"
	case KindTemplate:
		return "шаблон"
	case KindContext:
		return "контекст"
	case KindConnection:
		return "соединение"
	case KindSignal:
		return "сигнал"
	case KindSignalOption:
		return "signal option"
	case KindConnOption:
		return "обработчик"
	case KindDirection:
		return "signal direction"
	case KindSignalType:
		return "signal type"
	case KindUse:
		return "использовать"
	case KindUseMethod:
		return "линейно"
	case KindValues:
		return "значения"
	case KindExcept:
		return "кроме"
	case KindAll:
		return "все"
	case KindPut:
		return "подстановка"
	case KindRule:
		return "правило"
	case KindIn:
		return "в"
	case KindFrom:
		return "из"
	case KindBind:
		return "привязать"
	case KindRange:
		return "диапазон"
	case KindStatusConst:
		return "status constant"
	case KindIter:
		return "i"
	case KindTypeInt:
		return "int"
	case KindTypeFloat:
		return "float"
	case KindTypeStr:
		return "str"
	case KindTypeBool:
		return "bool"
	case KindTypeArray:
		return "arr"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Position locates a token within the source text.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a single lexical unit produced by [Scan].
// Text holds the canonical spelling: for most tokens it is the matched
// source text, but keyword aliases normalize (класс_а scans with text
// "аналог", класс_ц with "цифра"). Tokens are immutable once produced.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// keywords maps each reserved word to its token kind and canonical text.
// The two object-class aliases carry the type tag they denote instead of
// their own spelling.
var keywords = map[string]Token{
	"оборудование": {Kind: KindEquipment, Text: "оборудование"},
	"класс_а":      {Kind: KindObjectType, Text: "аналог"},
	"класс_ц":      {Kind: KindObjectType, Text: "цифра"},
	"шаблон":       {Kind: KindTemplate, Text: "шаблон"},
	"контекст":     {Kind: KindContext, Text: "контекст"},
	"соединение":   {Kind: KindConnection, Text: "соединение"},
	"обработчик":   {Kind: KindConnOption, Text: "обработчик"},
	"сигнал":       {Kind: KindSignal, Text: "сигнал"},
	"статус":       {Kind: KindSignalOption, Text: "статус"},
	"важность":     {Kind: KindSignalOption, Text: "важность"},
	"отображать":   {Kind: KindSignalOption, Text: "отображать"},
	"метка":        {Kind: KindSignalOption, Text: "метка"},
	"параметр":     {Kind: KindSignalOption, Text: "параметр"},
	"входной":      {Kind: KindDirection, Text: "входной"},
	"выходной":     {Kind: KindDirection, Text: "выходной"},
	"аналог":       {Kind: KindSignalType, Text: "аналог"},
	"дискрет":      {Kind: KindSignalType, Text: "дискрет"},
	"использовать": {Kind: KindUse, Text: "использовать"},
	"линейно":      {Kind: KindUseMethod, Text: "линейно"},
	"значения":     {Kind: KindValues, Text: "значения"},
	"кроме":        {Kind: KindExcept, Text: "кроме"},
	"все":          {Kind: KindAll, Text: "все"},
	"подстановка":  {Kind: KindPut, Text: "подстановка"},
	"правило":      {Kind: KindRule, Text: "правило"},
	"в":            {Kind: KindIn, Text: "в"},
	"из":           {Kind: KindFrom, Text: "из"},
	"привязать":    {Kind: KindBind, Text: "привязать"},
	"диапазон":     {Kind: KindRange, Text: "диапазон"},
	"норма":        {Kind: KindStatusConst, Text: "норма"},
	"авария":       {Kind: KindStatusConst, Text: "авария"},
	"тревога":      {Kind: KindStatusConst, Text: "тревога"},
	"Да":           {Kind: KindBool, Text: "Да"},
	"Нет":          {Kind: KindBool, Text: "Нет"},
	"i":            {Kind: KindIter, Text: "i"},
	"int":          {Kind: KindTypeInt, Text: "int"},
	"float":        {Kind: KindTypeFloat, Text: "float"},
	"str":          {Kind: KindTypeStr, Text: "str"},
	"bool":         {Kind: KindTypeBool, Text: "bool"},
	"arr":          {Kind: KindTypeArray, Text: "arr"},
}
