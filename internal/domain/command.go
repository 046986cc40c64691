package domain

// Element ids the landing page template must provide.
const (
	ElementYoutube        = "youtube"
	ElementTitle          = "title"
	ElementSummary        = "summary"
	ElementLoading        = "loading"
	ElementMainContent    = "main_content"
	ElementContent        = "content"
	ElementContentWrapper = "content_wrapper"
	ElementStreamingEnd   = "streaming_end"
	ElementVideoHeader    = "video_header"
)

const ClassHidden = "hidden"

type Op string

const (
	OpCreatePlayer     Op = "create_player"
	OpSetDocumentTitle Op = "set_document_title"
	OpSetHTML          Op = "set_html"
	OpRemove           Op = "remove"
	OpAddClass         Op = "add_class"
	OpRemoveClass      Op = "remove_class"
	OpClearStyle       Op = "clear_style"
)

// Command is one DOM mutation. The browser interpreter and Page both apply
// the same commands.
type Command struct {
	Op      Op       `json:"op"`
	Target  string   `json:"target,omitempty"`
	Value   string   `json:"value,omitempty"`
	Classes []string `json:"classes,omitempty"`
	Player  *Player  `json:"player,omitempty"`
}

func CreatePlayer(p Player) Command {
	return Command{Op: OpCreatePlayer, Target: p.MountID, Player: &p}
}

func SetDocumentTitle(title string) Command {
	return Command{Op: OpSetDocumentTitle, Value: title}
}

func SetHTML(target, html string) Command {
	return Command{Op: OpSetHTML, Target: target, Value: html}
}

func Remove(target string) Command {
	return Command{Op: OpRemove, Target: target}
}

func AddClass(target string, classes ...string) Command {
	return Command{Op: OpAddClass, Target: target, Classes: classes}
}

func RemoveClass(target string, classes ...string) Command {
	return Command{Op: OpRemoveClass, Target: target, Classes: classes}
}

func ClearStyle(target, property string) Command {
	return Command{Op: OpClearStyle, Target: target, Value: property}
}
