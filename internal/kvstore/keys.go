package kvstore

const (
	KeyTheme       = "kanbanify_theme"
	KeyUsers       = "kanbanify_users"
	KeyCurrentUser = "kanbanify_current_user"
	KeyAuthUsers   = "kanbanify_auth_users"
	KeySession     = "kanbanify_session"

	// KeyGlobalBoards and KeyGlobalLastBoard are used when no user scope is active.
	KeyGlobalBoards    = "kanbanify_boards"
	KeyGlobalLastBoard = "kanbanify_last_board"

	boardsPrefix    = "kanbanify_boards_"
	lastBoardPrefix = "kanbanify_last_board_"
)

// BoardsKey returns the board partition for userID, or the global partition.
func BoardsKey(userID string) string {
	if userID == "" {
		return KeyGlobalBoards
	}
	return boardsPrefix + userID
}

func LastBoardKey(userID string) string {
	if userID == "" {
		return KeyGlobalLastBoard
	}
	return lastBoardPrefix + userID
}
