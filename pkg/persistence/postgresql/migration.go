package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Drafts under conversational construction. Trigger, actions,
			-- and connections are stored as documents: the draft is always
			-- read and written whole.
			CREATE TABLE drafts (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				trigger_node JSONB,
				actions JSONB NOT NULL DEFAULT '[]',
				connections JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_drafts_created_at ON drafts(created_at);
			CREATE INDEX idx_drafts_deleted_at ON drafts(deleted_at);

			-- Session snapshots: the generated-workflow store plus the
			-- active-workflow pointer.
			CREATE TABLE sessions (
				id VARCHAR(255) PRIMARY KEY,
				active_workflow_id VARCHAR(255),
				workflows JSONB NOT NULL DEFAULT '{}',
				user_email VARCHAR(255),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_sessions_created_at ON sessions(created_at);
		`,
	}
}
